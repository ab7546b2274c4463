package ssl

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultRoot is the base directory for Let's Encrypt certificates
const DefaultRoot = "/etc/letsencrypt/live"

// Cert holds the conventional certificate paths for a domain
type Cert struct {
	Domain   string
	CertPath string
	KeyPath  string
}

// Store looks up certificates below a root directory laid out as
// <root>/<domain>/fullchain.pem.
type Store struct {
	Root string
}

// NewStore creates a Store. An empty root uses DefaultRoot.
func NewStore(root string) *Store {
	if root == "" {
		root = DefaultRoot
	}
	return &Store{Root: root}
}

// Paths returns the certificate paths for a domain.
// The domain is used as written, without sanitizing.
func (s *Store) Paths(domain string) *Cert {
	return &Cert{
		Domain:   domain,
		CertPath: filepath.Join(s.Root, domain, "fullchain.pem"),
		KeyPath:  filepath.Join(s.Root, domain, "privkey.pem"),
	}
}

// HasCert reports whether a fullchain.pem exists for domain.
func (s *Store) HasCert(domain string) bool {
	if domain == "" {
		return false
	}
	info, err := os.Stat(s.Paths(domain).CertPath)
	return err == nil && !info.IsDir()
}

// List returns the domains that have a certificate under the root.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read certificate root: %w", err)
	}

	domains := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if s.HasCert(entry.Name()) {
			domains = append(domains, entry.Name())
		}
	}
	return domains, nil
}

// Expiry returns the NotAfter time of the first certificate in the domain's
// fullchain.pem.
func (s *Store) Expiry(domain string) (time.Time, error) {
	path := s.Paths(domain).CertPath
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read certificate: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return time.Time{}, fmt.Errorf("no PEM certificate in %s", path)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse certificate: %w", err)
	}
	return cert.NotAfter, nil
}
