package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

const productsDir = "products"

// Store keeps product image associations.
type Store interface {
	InsertProductImages(ctx context.Context, images []models.ProductImage) error
	DeleteProductImages(ctx context.Context, productID int64) error
}

// Library keeps product image files in media directory and registers them in Store.
type Library struct {
	store  Store
	dir    string
	logger *zerolog.Logger
}

// NewLibrary returns new Library storing files under dir.
func NewLibrary(store Store, dir string, logger *zerolog.Logger) *Library {
	return &Library{
		store:  store,
		dir:    dir,
		logger: logger,
	}
}

// DeleteProductImages removes image associations of the product and its media directory.
func (l *Library) DeleteProductImages(ctx context.Context, productID int64) error {
	if err := l.store.DeleteProductImages(ctx, productID); err != nil {
		return err
	}

	if err := os.RemoveAll(l.productDir(productID)); err != nil {
		return fmt.Errorf("can't remove media of product %d: %w", productID, err)
	}

	return nil
}

// AttachImages copies staged images into product's media directory and registers them.
// Image which can't be decoded or copied is skipped. It returns number of attached images
// and joined errors of skipped ones.
func (l *Library) AttachImages(ctx context.Context, productID int64, staged []models.StagedImage) (int, error) {
	if len(staged) == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(l.productDir(productID), 0o755); err != nil {
		return 0, fmt.Errorf("can't create media directory of product %d: %w", productID, err)
	}

	var (
		images []models.ProductImage
		errs   []error
	)
	for _, image := range staged {
		attached, err := l.copyImage(productID, image)
		if err != nil {
			l.logger.Warn().Err(err).
				Int64("productId", productID).
				Str("image", image.Name).
				Msg("can't attach image")
			errs = append(errs, err)
			continue
		}
		images = append(images, *attached)
	}

	if err := l.store.InsertProductImages(ctx, images); err != nil {
		return 0, fmt.Errorf("can't register images of product %d: %w", productID, err)
	}

	return len(images), errors.Join(errs...)
}

// copyImage decodes staged image and copies it into product's media directory.
func (l *Library) copyImage(productID int64, image models.StagedImage) (*models.ProductImage, error) {
	decoded, err := imaging.Open(image.Path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("can't decode image %s: %w", image.Name, err)
	}

	name := fmt.Sprintf("%d_%s%s", image.Position, filepath.Base(image.Name), filepath.Ext(image.Path))
	if err := CopyFile(image.Path, filepath.Join(l.productDir(productID), name)); err != nil {
		return nil, fmt.Errorf("can't copy image %s: %w", image.Name, err)
	}

	bounds := decoded.Bounds()
	return &models.ProductImage{
		ProductID: productID,
		Role:      image.Role,
		Position:  image.Position,
		Path:      filepath.ToSlash(filepath.Join(productsDir, strconv.FormatInt(productID, 10), name)),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

func (l *Library) productDir(productID int64) string {
	return filepath.Join(l.dir, productsDir, strconv.FormatInt(productID, 10))
}

// CopyFile copies src file to dst, removing partially written dst on failure.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}

	return out.Close()
}
