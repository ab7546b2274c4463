// Package template loads nginx config templates from disk and fills in
// their placeholders.
//
// Templates are plain text files in the templates directory:
//
//	http.conf.template              plain HTTP server block
//	https.conf.template             HTTPS server block, used when a certificate exists
//	wildcard.localhost.conf.template catch-all block for <label>.localhost
//
// The HTTP and HTTPS templates may contain these tokens:
//
//	{{DOMAIN}}     sanitized domain name
//	{{PORT}}       upstream port
//	{{SERVER_IP}}  upstream address
//
// Substitution is literal. Nginx syntax such as $host is left as is, which
// is why text/template is not used here. The wildcard template is copied
// verbatim; its routing comes from the generated map file.
//
// # Built-in Templates
//
// Default versions of all three templates are embedded in the binary and
// can be installed with WriteDefaults (the "templates init" command).
package template
