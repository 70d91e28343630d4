package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/creator-campaign-api/pkg/apiErrors"
)

// WithRoutes registra um grupo de rotas no router.
func WithRoutes(routes ...Route) ConfigRouter {
	return func(r *Router) {
		r.AddRoutes(routes...)
	}
}

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type Router struct {
	mux *httprouter.Router
}

type ConfigRouter func(r *Router)

// New cria o router com respostas JSON para rotas e métodos desconhecidos.
// O preflight de CORS é respondido pelo middleware, não pelo httprouter.
func New(configs ...ConfigRouter) Router {
	mux := httprouter.New()
	mux.HandleOPTIONS = false
	mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Rota não encontrada", nil)
	})
	mux.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método não permitido", nil)
	})

	r := &Router{mux: mux}
	for _, config := range configs {
		config(r)
	}

	return *r
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// AddRoutes aplica os middlewares da rota na ordem declarada: o primeiro da
// lista é o mais externo.
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.mux.Handler(route.Method, route.Path, handler)
	}
}
