// Package gdrive uploads product images to a shared Google Drive folder and
// hands back a public URL for the product row.
package gdrive

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"sweetshop/config"
)

const imageFolder = "SweetShopImages"

type Uploader interface {
	UploadImage(ctx context.Context, data []byte, filename, mimeType string) (string, error)
}

type Client struct {
	cfg config.SheetsConfig

	once    sync.Once
	svc     *drive.Service
	initErr error
}

// New returns a Drive client backed by the same service account as the row
// store.
func New(cfg config.SheetsConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) service(ctx context.Context) (*drive.Service, error) {
	c.once.Do(func() {
		auth := &jwt.Config{
			Email:      c.cfg.ServiceAccountEmail,
			PrivateKey: []byte(c.cfg.PrivateKey),
			Scopes:     []string{drive.DriveScope},
			TokenURL:   google.JWTTokenURL,
		}
		c.svc, c.initErr = drive.NewService(ctx, option.WithHTTPClient(auth.Client(ctx)))
		if c.initErr != nil {
			c.initErr = fmt.Errorf("init drive client: %w", c.initErr)
		}
	})
	return c.svc, c.initErr
}

func (c *Client) folderID(ctx context.Context, svc *drive.Service) (string, error) {
	query := fmt.Sprintf("mimeType='application/vnd.google-apps.folder' and name='%s' and trashed=false", imageFolder)
	list, err := svc.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := svc.Files.Create(&drive.File{
		Name:     imageFolder,
		MimeType: "application/vnd.google-apps.folder",
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return folder.Id, nil
}

// UploadImage stores the file in the shared image folder, makes it readable
// by anyone with the link, and returns a direct-view URL.
func (c *Client) UploadImage(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return "", err
	}

	folderID, err := c.folderID(ctx, svc)
	if err != nil {
		return "", fmt.Errorf("resolve image folder: %w", err)
	}

	file, err := svc.Files.Create(&drive.File{
		Name:    filename,
		Parents: []string{folderID},
	}).Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	_, err = svc.Permissions.Create(file.Id, &drive.Permission{
		Role: "reader",
		Type: "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("share image: %w", err)
	}

	return fmt.Sprintf("https://drive.google.com/uc?export=view&id=%s", file.Id), nil
}
