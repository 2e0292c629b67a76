package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/devlinks/internal/db"
	"github.com/devlinks/internal/service"
	"github.com/devlinks/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ShowShare renders the public share page for any identity, no auth required.
// An unknown identity renders the skeleton card instead of an error page.
func (a *API) ShowShare(c *gin.Context) {
	identity := strings.TrimSpace(c.Param("id"))

	rec, err := a.records.Get(identity)
	if err != nil && !errors.Is(err, service.ErrRecordNotFound) {
		rec = nil
	}

	a.renderShare(c, rec)
}

// ShowOwnShare renders the signed-in user's own share page.
// It goes through the same projection and template as the public page,
// so the two stay identical by construction.
func (a *API) ShowOwnShare(c *gin.Context) {
	a.renderShare(c, currentRecord(c))
}

// ShowEditor renders the link editor page with the live preview pane.
func (a *API) ShowEditor(c *gin.Context) {
	rec := currentRecord(c)
	card, bioHTML := a.buildCard(c, rec)

	c.HTML(http.StatusOK, "editor.html", gin.H{
		"title":   "Customize your links",
		"card":    card,
		"bioHTML": bioHTML,
	})
}

// ShowSignInPage 渲染登录页面
func (a *API) ShowSignInPage(c *gin.Context) {
	c.HTML(http.StatusOK, "sign_in.html", gin.H{"title": "Sign in"})
}

// ShowSignUpPage 渲染注册页面
func (a *API) ShowSignUpPage(c *gin.Context) {
	c.HTML(http.StatusOK, "sign_up.html", gin.H{"title": "Sign up"})
}

// renderShare 是分享页与预览页共用的唯一渲染入口。
func (a *API) renderShare(c *gin.Context, rec *db.UserRecord) {
	card, bioHTML := a.buildCard(c, rec)

	title := "devlinks"
	if name := strings.TrimSpace(card.FirstName + " " + card.LastName); name != "" {
		title = fmt.Sprintf("%s | devlinks", name)
	}

	c.HTML(http.StatusOK, "share.html", gin.H{
		"title":   title,
		"card":    card,
		"bioHTML": bioHTML,
	})
}

// buildCard 做一次投影并渲染简介的 Markdown。
func (a *API) buildCard(c *gin.Context, rec *db.UserRecord) (view.ProfileCard, template.HTML) {
	avatar := ""
	if rec != nil {
		if _, _, err := a.avatars.Get(c.Request.Context(), rec.Identity); err == nil {
			avatar = avatarURL(rec.Identity)
		}
	}

	card := view.Present(rec, avatar)
	return card, renderBio(card.Bio)
}

// renderBio 将用户简介从 Markdown 渲染为净化后的 HTML。
func renderBio(bio string) template.HTML {
	trimmed := strings.TrimSpace(bio)
	if trimmed == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(trimmed), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(trimmed))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
