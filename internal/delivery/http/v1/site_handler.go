package v1

import (
	"encoding/xml"
	"net/http"

	"go-website-backend/config"
	"go-website-backend/internal/delivery/http/middleware"
	"go-website-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// SiteHandler serves the site's auxiliary endpoints: sitemap, public
// configuration, and CSRF token issuance for JS forms.
type SiteHandler struct {
	cfg *config.Config
}

// NewSiteHandler registers the site routes
func NewSiteHandler(root *gin.Engine, api *gin.RouterGroup, cfg *config.Config) {
	handler := &SiteHandler{cfg: cfg}

	root.GET("/sitemap.xml", handler.Sitemap)
	api.GET("/config", handler.SiteConfig)
	api.GET("/csrf-token", handler.CSRFToken)
}

type sitemapURL struct {
	Loc      string  `xml:"loc"`
	Priority float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap generates sitemap.xml for the site's public pages.
func (h *SiteHandler) Sitemap(c *gin.Context) {
	pages := []sitemapURL{
		{Loc: h.cfg.BaseURL + "/", Priority: 1.0},
		{Loc: h.cfg.BaseURL + "/company/coffee", Priority: 0.8},
		{Loc: h.cfg.BaseURL + "/company/machines", Priority: 0.8},
		{Loc: h.cfg.BaseURL + "/company/materials", Priority: 0.8},
	}

	c.XML(http.StatusOK, urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  pages,
	})
}

// SiteConfig returns the public site configuration for frontend use.
func (h *SiteHandler) SiteConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"site":  h.cfg.Site,
		"links": h.cfg.Links,
	})
}

// CSRFToken issues the double-submit token for JavaScript forms.
func (h *SiteHandler) CSRFToken(c *gin.Context) {
	token, err := middleware.IssueCSRFToken(c)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"csrf_token": token})
}
