package handler

import (
	"errors"
	"net/http"

	"github.com/devlinks/internal/links"
	"github.com/devlinks/internal/validate"
	"github.com/gin-gonic/gin"
)

type linkListRequest struct {
	Links []links.Entry `json:"links"`
}

// GetLinks 返回当前用户的链接列表，按固定平台顺序投影。
func (a *API) GetLinks(c *gin.Context) {
	rec := currentRecord(c)
	if rec == nil {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"links": links.EntriesFromRecord(rec),
		"user":  rec,
	})
}

// UpdateLinks 保存整个链接列表：先校验，再压平成具名字段做部分更新，
// 成功后重新拉取服务端记录，把最新状态整个返回给客户端替换本地缓存。
func (a *API) UpdateLinks(c *gin.Context) {
	var payload linkListRequest
	if !bindJSON(c, &payload, "请提交有效的链接列表") {
		return
	}

	inputs := make([]validate.LinkInput, len(payload.Links))
	for i, entry := range payload.Links {
		inputs[i] = validate.LinkInput{Platform: entry.Platform, URL: entry.URL}
	}
	if errs := validate.Check(validate.LinkList, inputs); !errs.Valid() {
		respondFieldErrors(c, errs)
		return
	}

	editor := links.NewEditor(currentIdentity(c), a.records)
	editor.Load(payload.Links)

	record, err := editor.Save()
	if err != nil {
		if errors.Is(err, links.ErrNothingToSave) {
			respondError(c, http.StatusBadRequest, "列表为空，没有可保存的链接")
			return
		}
		respondError(c, http.StatusInternalServerError, "保存链接失败，请稍后再试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "链接已保存",
		"user":    record,
		"links":   links.EntriesFromRecord(record),
	})
}
