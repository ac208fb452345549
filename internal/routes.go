package internal

import (
	"net/http"

	"csd/internal/controllers"
	"csd/internal/providers"
)

func InitRoutes(commentController *controllers.CommentController, adminController *controllers.AdminController, auth providers.AuthProviderInterface) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/comments", http.HandlerFunc(commentController.GetComments))
	routers.Post("/new", http.HandlerFunc(commentController.NewComment))

	routers.Get("/admin/shows", auth.Middleware(http.HandlerFunc(adminController.Shows)))
	routers.Get("/admin/setting", auth.Middleware(http.HandlerFunc(adminController.GetSetting)))
	routers.Post("/admin/setting", auth.Middleware(http.HandlerFunc(adminController.SetSetting)))
	routers.Get("/admin/comments", auth.Middleware(http.HandlerFunc(adminController.Comments)))
	routers.Post("/admin/comments/delete", auth.Middleware(http.HandlerFunc(adminController.DeleteComments)))
	return routers
}
