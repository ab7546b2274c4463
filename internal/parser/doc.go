// Package parser turns the raw DOMAINS and WILDCARD_LOCALHOST_PORTS values
// into structured routing data.
//
// # Domains
//
// DOMAINS is tried as a JSON object first:
//
//	{"example.com": 8080, "api.example.com": "9000"}
//
// and, when it is not a JSON object, as a comma-separated list:
//
//	example.com,api.example.com:9000
//
// Entries without a port get 80. The result records which branch produced
// it in DomainSet.Format. Domains are sanitized; an entry whose domain is
// empty after sanitizing, or whose port is not an integer in 1..65535, is
// skipped with a warning and the rest are kept.
//
// # Wildcard ports
//
// WILDCARD_LOCALHOST_PORTS is a list of label:port tokens. The label "*"
// sets the default port; without it the default is 80.
//
//	app:3000,api:4000,*:80
package parser
