package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/devlinks/internal/storage"
	"github.com/devlinks/internal/validate"
	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Bio       *string `json:"bio"`
}

// UpdateProfile 更新资料字段，部分更新语义：只覆盖提交的字段。
func (a *API) UpdateProfile(c *gin.Context) {
	var payload profileRequest
	if !bindJSON(c, &payload, "请填写完整的资料") {
		return
	}

	errs := validate.Check(validate.Profile, validate.ProfileInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
	})
	if !errs.Valid() {
		respondFieldErrors(c, errs)
		return
	}

	fields := map[string]any{
		"first_name": strings.TrimSpace(payload.FirstName),
		"last_name":  strings.TrimSpace(payload.LastName),
		"email":      strings.TrimSpace(payload.Email),
	}
	if payload.Bio != nil {
		fields["bio"] = strings.TrimSpace(*payload.Bio)
	}

	record, err := a.records.UpdatePartial(currentIdentity(c), fields)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "保存资料失败，请稍后再试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "资料已保存",
		"user":    record,
	})
}

// UploadAvatar 接收头像上传，缩放后按身份键整体覆盖存储，不保留历史。
func (a *API) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		respondError(c, http.StatusBadRequest, "只允许上传图片文件")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "读取上传文件失败")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "读取上传文件失败")
		return
	}

	thumb, err := storage.Thumbnail(data, storage.AvatarMaxEdge)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无法解析上传的图片")
		return
	}

	identity := currentIdentity(c)
	if err := a.avatars.Put(c.Request.Context(), identity, "image/jpeg", thumb); err != nil {
		respondError(c, http.StatusInternalServerError, "保存头像失败，请稍后再试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "头像已更新",
		"url":     avatarURL(identity),
	})
}

// Avatar 按身份返回头像内容，对所有人可见（分享页需要）。
func (a *API) Avatar(c *gin.Context) {
	identity := strings.TrimSpace(c.Param("id"))

	data, contentType, err := a.avatars.Get(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, "读取头像失败")
		return
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Data(http.StatusOK, contentType, data)
}

func avatarURL(identity string) string {
	return "/avatars/" + identity
}
