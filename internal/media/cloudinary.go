package media

import (
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

type CloudinaryResolver struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryResolver(cloudName, apiKey, apiSecret string) (*CloudinaryResolver, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryResolver{cld: cld}, nil
}

// PublicURL treats ref as a Cloudinary public id. A file extension on the
// reference is dropped since Cloudinary ids are extensionless.
func (s *CloudinaryResolver) PublicURL(ref string) (string, error) {
	if isAbsoluteURL(ref) {
		return ref, nil
	}
	publicID := cleanObjectPath(ref)
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" {
		return "", fmt.Errorf("empty public id")
	}

	image, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("build cloudinary asset: %w", err)
	}
	image.Config.URL.Secure = true

	url, err := image.String()
	if err != nil {
		return "", fmt.Errorf("build cloudinary url: %w", err)
	}
	return url, nil
}
