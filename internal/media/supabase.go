package media

import (
	"fmt"
	"strings"
)

type SupabaseResolver struct {
	baseURL string
	bucket  string
}

func NewSupabaseResolver(baseURL, bucket string) *SupabaseResolver {
	return &SupabaseResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
	}
}

func (s *SupabaseResolver) PublicURL(ref string) (string, error) {
	if isAbsoluteURL(ref) {
		return ref, nil
	}
	objectPath := cleanObjectPath(ref)
	if objectPath == "" {
		return "", fmt.Errorf("empty object path")
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath), nil
}
