package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sweetshop/gdrive"
	"sweetshop/models"
	"sweetshop/sheetdb"
)

const productsCacheKey = "products"

func isValidImageExtension(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png", ".webp"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

// GetProductListHandler returns the catalog, served from the 60s Redis cache
// when fresh.
func GetProductListHandler(c *gin.Context, store sheetdb.Store, rdb *redis.Client) {
	if data, ok := cacheGet(c, rdb, productsCacheKey); ok {
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	products, err := store.GetProducts(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products: " + err.Error(),
		})
		return
	}

	if data, err := json.Marshal(products); err == nil {
		cacheSet(c, rdb, productsCacheKey, data)
	}
	c.JSON(http.StatusOK, products)
}

// uploadProductImage pushes the multipart image to Drive and returns its
// public URL. A missing file is not an error; it returns "".
func uploadProductImage(c *gin.Context, uploader gdrive.Uploader) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	if !isValidImageExtension(fileHeader) {
		return "", errors.New("unsupported image format")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return uploader.UploadImage(c, data, fileHeader.Filename, mimeType)
}

// CreateProductHandler adds a catalog entry from a multipart form; the image
// upload happens first so the stored row carries the final URL.
func CreateProductHandler(c *gin.Context, store sheetdb.Store, uploader gdrive.Uploader, rdb *redis.Client) {
	name := c.PostForm("name")
	price := c.PostForm("price")
	if name == "" || price == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing name or price",
		})
		return
	}
	stock, _ := strconv.Atoi(c.PostForm("stock"))

	imageURL, err := uploadProductImage(c, uploader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to upload image: " + err.Error(),
		})
		return
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    c.PostForm("category"),
		Stock:       stock,
		ImageURL:    imageURL,
		Description: c.PostForm("description"),
		Price:       price,
	}
	if err := store.CreateProduct(c, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product",
		})
		return
	}

	cacheDel(c, rdb, productsCacheKey)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"product": product,
	})
}

// UpdateProductHandler edits a catalog entry. A price change lands in the
// PriceLogs audit sheet with the acting admin's email.
func UpdateProductHandler(c *gin.Context, store sheetdb.Store, uploader gdrive.Uploader, rdb *redis.Client) {
	productID := c.Param("productID")

	name := c.PostForm("name")
	price := c.PostForm("price")
	if name == "" || price == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing name or price",
		})
		return
	}

	imageURL, err := uploadProductImage(c, uploader)
	if err != nil {
		// The row update is still worth doing; keep the old image.
		log.Printf("image upload failed for product %s: %v", productID, err)
		imageURL = ""
	}

	adminEmail := "Admin"
	if email, ok := c.Get("Email"); ok {
		adminEmail = email.(string)
	}

	product := models.Product{
		ID:          productID,
		Name:        name,
		Category:    c.PostForm("category"),
		ImageURL:    imageURL,
		Description: c.PostForm("description"),
		Price:       price,
	}
	err = store.UpdateProduct(c, product, adminEmail)
	if errors.Is(err, sheetdb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update product",
		})
		return
	}

	cacheDel(c, rdb, productsCacheKey)
	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated",
	})
}

func DeleteProductHandler(c *gin.Context, store sheetdb.Store, rdb *redis.Client) {
	productID := c.Param("productID")

	err := store.DeleteProduct(c, productID)
	if errors.Is(err, sheetdb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}

	cacheDel(c, rdb, productsCacheKey)
	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}
