// Package theme loads the UI color theme from a plain `key value` file.
// Loading is total: a missing or malformed file yields the built-in
// defaults. Bundled presets are embedded for scaffolding new installs.
package theme
