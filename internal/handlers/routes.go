package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Handlers groups every HTTP handler of the service.
type Handlers struct {
	Projects     *ProjectHandler
	Components   *ComponentHandler
	Complexities *ComplexityHandler
	Relations    *RelationHandler
	Evaluations  *EvaluationHandler
	Catalog      *CatalogHandler
	Cache        *CacheHandler
}

// Register mounts the API routes on api. Fixed paths come before their /:id siblings.
func (h *Handlers) Register(api fiber.Router) {
	api.Get("/projects", h.Projects.ListProjects)
	api.Post("/projects", h.Projects.CreateProject)
	api.Get("/projects/:id", h.Projects.GetProject)
	api.Put("/projects/:id", h.Projects.UpdateProject)
	api.Delete("/projects/:id", h.Projects.DeleteProject)
	api.Get("/projects/:id/components", h.Projects.ListProjectComponents)
	api.Get("/projects/:id/evaluations", h.Projects.ListProjectEvaluations)

	api.Get("/components", h.Components.ListComponents)
	api.Post("/components", h.Components.CreateComponent)
	api.Get("/components/:id", h.Components.GetComponent)
	api.Put("/components/:id", h.Components.UpdateComponent)
	api.Delete("/components/:id", h.Components.DeleteComponent)

	api.Get("/complexities", h.Complexities.ListComplexities)
	api.Post("/complexities", h.Complexities.CreateComplexity)
	api.Get("/complexities/:id", h.Complexities.GetComplexity)
	api.Put("/complexities/:id", h.Complexities.UpdateComplexity)
	api.Delete("/complexities/:id", h.Complexities.DeleteComplexity)

	api.Get("/relations", h.Relations.ListRelations)
	api.Post("/relations", h.Relations.CreateRelation)
	api.Put("/relations", h.Relations.UpsertRelation)
	api.Get("/relations/lookup", h.Relations.LookupRelation)
	api.Get("/relations/:id", h.Relations.GetRelation)
	api.Put("/relations/:id", h.Relations.UpdateRelationHours)
	api.Delete("/relations/:id", h.Relations.DeleteRelation)

	api.Get("/evaluations", h.Evaluations.ListEvaluations)
	api.Post("/evaluations", h.Evaluations.CreateEvaluation)
	api.Post("/evaluations/preview", h.Evaluations.PreviewEvaluation)
	api.Get("/evaluations/export", h.Evaluations.ExportReports)
	api.Get("/evaluations/:id", h.Evaluations.GetEvaluation)
	api.Put("/evaluations/:id", h.Evaluations.UpdateEvaluation)
	api.Delete("/evaluations/:id", h.Evaluations.DeleteEvaluation)
	api.Get("/evaluations/:id/report", h.Evaluations.DownloadReport)

	api.Post("/catalog/import", h.Catalog.ImportCatalog)
	api.Post("/catalog/seed", h.Catalog.SeedCatalog)

	api.Get("/cache/stats", h.Cache.GetCacheStats)
	api.Delete("/cache", h.Cache.ClearCache)

	api.Get("/swagger/*", swagger.HandlerDefault)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	api.Get("/__routes", ListRoutes)
}

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// ListRoutes returns every registered route
// @Summary List registered routes
// @Tags diagnostics
// @Produce json
// @Success 200 {array} routeInfo
// @Router /__routes [get]
func ListRoutes(c *fiber.Ctx) error {
	routes := c.App().GetRoutes(true)
	out := make([]routeInfo, 0, len(routes))
	for _, r := range routes {
		if r.Method == fiber.MethodHead {
			continue
		}
		out = append(out, routeInfo{Method: r.Method, Path: r.Path})
	}
	return c.JSON(out)
}
