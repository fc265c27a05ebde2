package media_test

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/MichalMitros/pim-sync/internal/platform/media"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/storagetesting"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = zerolog.Nop()

func TestUnitAttachImages(t *testing.T) {
	staging := t.TempDir()
	mediaDir := t.TempDir()

	mainPath := saveImage(t, staging, "MAIN.jpg", 40, 30)
	extraPath := saveImage(t, staging, "EXTRA.jpg", 8, 16)
	brokenPath := filepath.Join(staging, "BROKEN.jpg")
	require.NoError(t, os.WriteFile(brokenPath, []byte("not an image"), 0o644))

	store := storagetesting.NewMemory()
	library := media.NewLibrary(store, mediaDir, &logger)

	attached, err := library.AttachImages(context.TODO(), 7, []models.StagedImage{
		{Path: mainPath, Name: "MAIN", Role: models.ImageMain, Position: 0},
		{Path: brokenPath, Name: "BROKEN", Role: models.ImageAdditional, Position: 1},
		{Path: extraPath, Name: "EXTRA", Role: models.ImageAdditional, Position: 2},
	})

	assert.Error(t, err, "should report broken image")
	assert.ErrorContains(t, err, "BROKEN")
	assert.Equal(t, 2, attached, "should attach decodable images")

	images := store.ProductImages(7)
	require.Len(t, images, 2)
	assert.Equal(t, models.ProductImage{
		ID:        images[0].ID,
		ProductID: 7,
		Role:      models.ImageMain,
		Position:  0,
		Path:      "products/7/0_MAIN.jpg",
		Width:     40,
		Height:    30,
	}, images[0], "should register main image with dimensions")
	assert.Equal(t, "products/7/2_EXTRA.jpg", images[1].Path)
	assert.Equal(t, 8, images[1].Width)
	assert.Equal(t, 16, images[1].Height)

	assert.FileExists(t, filepath.Join(mediaDir, "products", "7", "0_MAIN.jpg"), "should copy image")
	assert.FileExists(t, filepath.Join(mediaDir, "products", "7", "2_EXTRA.jpg"), "should copy image")
	assert.NoFileExists(t, filepath.Join(mediaDir, "products", "7", "1_BROKEN.jpg"), "shouldn't copy broken image")
	assert.FileExists(t, mainPath, "should leave staged file for caller")
}

func TestUnitAttachNoImages(t *testing.T) {
	mediaDir := t.TempDir()
	library := media.NewLibrary(storagetesting.NewMemory(), mediaDir, &logger)

	attached, err := library.AttachImages(context.TODO(), 7, nil)

	require.NoError(t, err, "shouldn't return any error")
	assert.Zero(t, attached)
	assert.NoDirExists(t, filepath.Join(mediaDir, "products", "7"), "shouldn't create product directory")
}

func TestUnitDeleteProductImages(t *testing.T) {
	staging := t.TempDir()
	mediaDir := t.TempDir()

	store := storagetesting.NewMemory()
	library := media.NewLibrary(store, mediaDir, &logger)

	_, err := library.AttachImages(context.TODO(), 3, []models.StagedImage{
		{Path: saveImage(t, staging, "A.jpg", 2, 2), Name: "A", Role: models.ImageMain},
	})
	require.NoError(t, err, "shouldn't return any error")
	_, err = library.AttachImages(context.TODO(), 4, []models.StagedImage{
		{Path: saveImage(t, staging, "B.jpg", 2, 2), Name: "B", Role: models.ImageMain},
	})
	require.NoError(t, err, "shouldn't return any error")

	require.NoError(t, library.DeleteProductImages(context.TODO(), 3), "shouldn't return any error")

	assert.Empty(t, store.ProductImages(3), "should delete image associations")
	assert.NoDirExists(t, filepath.Join(mediaDir, "products", "3"), "should delete product media")
	assert.Len(t, store.ProductImages(4), 1, "shouldn't touch other products")
	assert.DirExists(t, filepath.Join(mediaDir, "products", "4"), "shouldn't touch other products")
}

func saveImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	require.NoError(t, imaging.Save(img, path), "should save test image")

	return path
}
