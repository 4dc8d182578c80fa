package devserver

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/utils"
)

// LocalCertificates looks for certificates installed by local development
// proxies (Valet, Herd, Laragon, mkcert) in a list of directories.
type LocalCertificates struct {
	Dirs []string
}

var _ domain.CertificateProvider = (*LocalCertificates)(nil)

// NewLocalCertificates creates a provider searching the default directories
// of the current platform followed by extra
func NewLocalCertificates(extra ...string) *LocalCertificates {
	home, _ := os.UserHomeDir()
	dirs := append(DefaultCertificateDirs(runtime.GOOS, home), extra...)
	return &LocalCertificates{Dirs: dirs}
}

// DefaultCertificateDirs returns where local proxies keep their certificates
func DefaultCertificateDirs(goos, home string) []string {
	var dirs []string
	switch goos {
	case "darwin":
		dirs = []string{
			filepath.Join(home, ".config", "valet", "Certificates"),
			filepath.Join(home, "Library", "Application Support", "Herd", "config", "valet", "Certificates"),
		}
	case "windows":
		dirs = []string{
			`C:\laragon\etc\ssl`,
			filepath.Join(home, ".config", "herd", "config", "valet", "Certificates"),
		}
	default:
		dirs = []string{
			filepath.Join(home, ".config", "valet", "Certificates"),
			filepath.Join(home, ".valet", "Certificates"),
		}
	}
	if home == "" {
		kept := dirs[:0]
		for _, d := range dirs {
			if filepath.IsAbs(d) {
				kept = append(kept, d)
			}
		}
		dirs = kept
	}
	return dirs
}

// Lookup returns the first certificate/key pair found for host
func (c *LocalCertificates) Lookup(host string) (domain.Certificate, bool) {
	if host == "" {
		return domain.Certificate{}, false
	}

	pairs := [][2]string{
		{host + ".crt", host + ".key"},
		{host + ".pem", host + "-key.pem"},
		{"laragon.crt", "laragon.key"},
	}

	for _, dir := range c.Dirs {
		for _, p := range pairs {
			cert := filepath.Join(dir, p[0])
			key := filepath.Join(dir, p[1])
			if utils.IsFile(cert) && utils.IsFile(key) {
				return domain.Certificate{CertFile: cert, KeyFile: key}, true
			}
		}
	}
	return domain.Certificate{}, false
}
