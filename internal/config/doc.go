// Package config loads askhive configuration from YAML.
//
// Configuration is read once at startup; the rest of the system receives
// resolved values and never touches environment state directly.
//
// Example configuration:
//
//	server:
//	  http_addr: ":3000"
//	database:
//	  driver: sqlite        # "sqlite" or "memory"
//	  path: askhive.db
//	  password_file: ""     # optional engine credential, read at load time
//	logging:
//	  level: info           # debug | info | warn | error
//	  format: text          # text | json
//	ratelimit:
//	  enabled: false
//	  rps: 50
//	  burst: 100
//
// Environment variables may be referenced as ${VAR_NAME} anywhere in the
// file and are expanded before parsing.
package config
