package services

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

const (
	DefaultSearchLimit = 10

	// PlaceholderScore is attached to every result until a real similarity
	// model is wired in.
	PlaceholderScore = 0.85

	PlaceholderFlowerName = "hoa hồng"

	MinFlowerImageBytes     = 1000
	MinFlowerImageDimension = 50
)

// ImageSearcher finds catalog products that look like the uploaded image.
type ImageSearcher interface {
	Search(ctx context.Context, img []byte, limit int) ([]other.ImageSearchResult, error)
	RecognizeFlowerName(ctx context.Context, img []byte) (string, error)
	IsFlowerImage(img []byte) bool
}

// RandomImageSearcher performs no image analysis: it returns random active
// products with a constant score.
type RandomImageSearcher struct {
	productRepo repositories.ProductRepositoryImpl
	log         logrus.FieldLogger
}

func NewRandomImageSearcher(productRepo repositories.ProductRepositoryImpl, log logrus.FieldLogger) *RandomImageSearcher {
	return &RandomImageSearcher{productRepo: productRepo, log: log}
}

func (s *RandomImageSearcher) Search(ctx context.Context, img []byte, limit int) ([]other.ImageSearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	products, err := s.productRepo.GetRandomActive(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "could not pick candidate products")
	}

	results := make([]other.ImageSearchResult, 0, len(products))
	for _, p := range products {
		results = append(results, other.ImageSearchResult{
			ProductID:       p.ID,
			Name:            p.Name,
			Slug:            p.Slug,
			ImageURL:        p.ImageURL,
			Price:           p.Price,
			SimilarityScore: PlaceholderScore,
		})
	}

	s.log.WithFields(logrus.Fields{"bytes": len(img), "limit": limit, "results": len(results)}).
		Debug("Search: placeholder image search served")
	return results, nil
}

func (s *RandomImageSearcher) RecognizeFlowerName(ctx context.Context, img []byte) (string, error) {
	return PlaceholderFlowerName, nil
}

func (s *RandomImageSearcher) IsFlowerImage(img []byte) bool {
	return IsDecodableImage(img)
}

// IsDecodableImage only checks size and that the whole payload decodes to an
// image larger than MinFlowerImageDimension on both sides. It does not
// classify content.
func IsDecodableImage(img []byte) bool {
	if len(img) < MinFlowerImageBytes {
		return false
	}
	decoded, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return false
	}
	bounds := decoded.Bounds()
	return bounds.Dx() > MinFlowerImageDimension && bounds.Dy() > MinFlowerImageDimension
}
