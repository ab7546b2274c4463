// Package config builds the settings for one confgen run.
//
// All values are read once at process start into a Config that is passed
// explicitly to the parser and generator; nothing else reads the
// environment.
//
// # Sources
//
// An optional YAML settings file (--config or CONFGEN_CONFIG) is applied
// first, then environment variables override it:
//
//	DOMAINS                    JSON object or domain[:port] list
//	SERVER_IP                  substituted into templates (default 127.0.0.1)
//	ENABLE_SSL                 "true" selects the HTTPS template when a cert exists
//	WILDCARD_LOCALHOST_TARGET  "true" enables the wildcard routing pair
//	WILDCARD_LOCALHOST_PORTS   label:port list, "*" sets the default port
//	TEMPLATES_DIR              default /etc/nginx/conf.d/templates
//	OUTPUT_DIR                 default /etc/nginx/conf.d
//	CERT_ROOT                  default /etc/letsencrypt/live
//	REQUIRE_DOMAINS            "true" makes a missing DOMAINS fatal
//
// Example settings file:
//
//	server_ip: 10.0.0.5
//	enable_ssl: true
//	output_dir: /etc/nginx/conf.d
//	domains:
//	  example.com: 8080
//	wildcard:
//	  enabled: true
//	  ports:
//	    "*": 80
//	    app: 3000
//
// Domain and port values from the file are rendered into the same list
// format as the environment variables and parsed by the same code.
package config
