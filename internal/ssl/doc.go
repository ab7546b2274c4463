// Package ssl answers questions about certificates that another process
// (certbot, a companion container) has already issued.
//
// confgen never issues or renews certificates. It only probes the
// conventional Let's Encrypt layout to decide whether a domain can be served
// with the HTTPS template:
//
//	/etc/letsencrypt/live/<domain>/fullchain.pem
//	/etc/letsencrypt/live/<domain>/privkey.pem
//
// # Usage
//
//	store := ssl.NewStore(cfg.CertRoot)
//	if store.HasCert("example.com") {
//	    // render https.conf.template
//	}
//
// Expiry reads the leaf certificate's NotAfter for display by the plan
// command.
package ssl
