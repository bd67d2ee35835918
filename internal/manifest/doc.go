// Package manifest builds the model manifest for an asset root.
//
// A model folder is a directory directly under the asset root whose name is
// a model identifier and which contains a regular file named
// "<identifier>.<extension>". Build lists those identifiers, in directory
// enumeration order unless sorting is requested, and writes them to a
// manifest file inside the asset root, replacing any previous content.
//
// The flat layout instead lists model files lying directly in the asset
// root, which is how older OBJ-based pipelines were organised.
package manifest
