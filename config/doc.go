// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Defaults cover the Singapore deployment, so a minimal file only names the
// agency; the kinematic models, DataMall endpoint, and validator settings
// all carry working values out of the box.
package config
