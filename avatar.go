package main

import (
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"accounthub/models"
	"accounthub/pkg/profilestore"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

const (
	maxAvatarBytes = 5 * 1024 * 1024
	avatarSize     = 256
)

// uploadAvatarHandler accepts a multipart image, stores a square JPEG
// thumbnail under UPLOAD_BASE/avatars and points the profile image at it.
func (a *app) uploadAvatarHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	ctx := c.Request.Context()

	profile, err := a.profiles.Get(ctx, uid)
	if err != nil && !errors.Is(err, profilestore.ErrNotFound) {
		a.writeError(c, err, "failed to load profile")
		return
	}
	if errors.Is(err, profilestore.ErrNotFound) {
		profile = models.Profile{UserID: uid}
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer src.Close()
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is not a supported image"})
		return
	}
	thumb := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	dir := filepath.Join(a.cfg.UploadBase, "avatars")
	if err := os.MkdirAll(dir, 0755); err != nil {
		a.writeError(c, err, "mkdir failed")
		return
	}
	rel := avatarPath(uid)
	if err := imaging.Save(thumb, filepath.Join(a.cfg.UploadBase, filepath.FromSlash(rel)), imaging.JPEGQuality(85)); err != nil {
		a.writeError(c, err, "save failed")
		return
	}

	profile.ProfileImage = rel
	if err := a.profiles.Set(ctx, uid, profile); err != nil {
		a.writeError(c, err, "failed to save profile")
		return
	}
	a.recordActivity(c, uid, "profile.avatar_updated", "Profile image updated", nil)
	c.JSON(http.StatusOK, gin.H{"profileImage": rel})
}

// avatarPath names the file after the hex-encoded user id so distinct ids
// never share a file and no id can escape the avatars directory.
func avatarPath(uid string) string {
	return "avatars/" + hex.EncodeToString([]byte(uid)) + ".jpg"
}
