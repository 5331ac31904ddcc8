package media

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

const (
	BackendSupabase   = "supabase"
	BackendCloudinary = "cloudinary"
)

// Resolver turns a stored media reference (an object path or an absolute
// URL) into a public URL.
type Resolver interface {
	PublicURL(ref string) (string, error)
}

type Config struct {
	Backend             string
	SupabaseURL         string
	SupabaseBucket      string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func NewResolver(cfg Config) (Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseBucket == "" {
			return nil, fmt.Errorf("supabase media backend requires SUPABASE_URL and SUPABASE_BUCKET")
		}
		return NewSupabaseResolver(cfg.SupabaseURL, cfg.SupabaseBucket), nil
	case BackendCloudinary:
		return NewCloudinaryResolver(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "":
		return LocalResolver{Prefix: "/media/"}, nil
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}

// LocalResolver serves references relative to a static prefix.
type LocalResolver struct {
	Prefix string
}

func (r LocalResolver) PublicURL(ref string) (string, error) {
	if isAbsoluteURL(ref) {
		return ref, nil
	}
	prefix := r.Prefix
	if prefix == "" {
		prefix = "/"
	}
	return strings.TrimRight(prefix, "/") + "/" + cleanObjectPath(ref), nil
}

func isAbsoluteURL(ref string) bool {
	parsed, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

func cleanObjectPath(ref string) string {
	return strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(ref)), "/")
}
