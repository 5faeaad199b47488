package handlers

import (
	"net/http"

	errors "github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
)

// multipartOverhead leaves room for boundaries and headers around the file part.
const multipartOverhead = 64 << 10

func (a *API) upload(c *gin.Context) {
	if a.Media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.Media.MaxBytes()+multipartOverhead)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(c, apperr.Validation("File exceeds the maximum upload size."), "")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}
	defer f.Close()

	up, err := a.Media.Upload(c.Request.Context(), f, fh.Size)
	if err != nil {
		respondError(c, err, "Failed to upload file")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "File uploaded successfully.",
		"url":      up.URL,
		"folder":   up.Folder,
		"publicId": up.PublicID,
		"width":    up.Width,
		"height":   up.Height,
		"bytes":    up.Bytes,
	})
}

func (a *API) deleteUpload(c *gin.Context) {
	if a.Media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}
	if err := a.Media.Delete(c.Request.Context(), c.Param("folder"), c.Param("publicId")); err != nil {
		respondError(c, err, "An error occurred during deletion.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully."})
}
