// Package config loads the optional HCL configuration file. The file can
// hold a `manifest` block mirroring the manifest build options and a `watch`
// block for long-running mode. Every attribute is optional; attributes that
// are absent leave the corresponding setting untouched.
//
// Expressions are evaluated with a `path` object exposing `path.cwd` and
// `path.config_dir`, so roots can be written relative to the config file:
//
//	manifest {
//	  asset_root = "${path.config_dir}/FBXs"
//	}
package config
