package handler

import (
	"github.com/inkwell/internal/markup"
	"github.com/inkwell/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	posts      *service.PostService
	categories *service.CategoryService
	comments   *service.CommentService
	profiles   *service.ProfileService
	pages      *service.PageService
	registry   *service.PageRegistry
	settings   *service.SiteSettingService
	stats      *service.StatsService
	writer     *service.AIWriterService
	images     *service.ImageSearchService
	components *markup.Registry
}

// NewAPI constructs a handler set with shared services. The markup component
// registry is created empty here and shared by the page validator and the
// renderer so both always speak the same grammar.
func NewAPI(db *gorm.DB) *API {
	components := markup.NewRegistry()
	settings := service.NewSiteSettingService(db)
	pages := service.NewPageService(db, components)

	return &API{
		db:         db,
		posts:      service.NewPostService(db),
		categories: service.NewCategoryService(db),
		comments:   service.NewCommentService(db),
		profiles:   service.NewProfileService(db),
		pages:      pages,
		registry:   service.NewPageRegistry(pages),
		settings:   settings,
		stats:      service.NewStatsService(db),
		writer:     service.NewAIWriterService(settings),
		images:     service.NewImageSearchService(settings),
		components: components,
	}
}

// Registry exposes the custom page route registry for router wiring.
func (a *API) Registry() *service.PageRegistry {
	return a.registry
}

// Writer exposes the AI writer service, mainly for tests.
func (a *API) Writer() *service.AIWriterService {
	return a.writer
}

// Images exposes the image search service, mainly for tests.
func (a *API) Images() *service.ImageSearchService {
	return a.images
}
