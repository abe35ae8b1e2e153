package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// @title gomovies API
// @version 1.0
// @description Movie catalog proxy, trending searches, bookmarks and Google sign-in.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}
