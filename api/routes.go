package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/handlers/v1/account"
	"github.com/carson-networks/finance-server/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-server/internal/handlers/v1/category"
	"github.com/carson-networks/finance-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-server/internal/handlers/v1/user"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage *storage.Storage
}

// Serve blocks until ctx is cancelled and the server has fully shut
// down, so callers can tear down dependencies afterwards.
func (r *Rest) Serve(ctx context.Context) {
	apiMux := http.NewServeMux()
	humaAPI := humago.New(apiMux, huma.DefaultConfig("finance-server", "1.0.0"))
	registerRoutes(humaAPI, r.Service)

	statusHandler := status.NewHandler(r.Storage)

	mux := http.NewServeMux()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	mux.Handle("/", logging.Middleware(r.Logger)(apiMux))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	listener, err := net.Listen("tcp", ":"+r.Port)
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return
	}

	r.Logger.Info("HttpServer.Serve.listening")
	r.serve(ctx, &server, listener)
	r.Logger.Info("HttpServer.Serve.shut down")
}

// serve runs the server on the listener. After ctx cancellation it
// returns only once in-flight requests have drained, so nothing tears
// down the mutation queue under a live handler.
func (r *Rest) serve(ctx context.Context, server *http.Server, listener net.Listener) {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.serve error")
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
	}
	<-serveErr
}

func registerRoutes(api huma.API, svc *service.Service) {
	user.NewCreateUserHandler(svc.User).Register(api)
	user.NewGetUserHandler(svc.User).Register(api)
	user.NewListUsersHandler(svc.User).Register(api)
	user.NewUpdateUserHandler(svc.User).Register(api)
	user.NewDeleteUserHandler(svc.User).Register(api)

	account.NewCreateAccountHandler(svc.Account).Register(api)
	account.NewGetAccountHandler(svc.Account).Register(api)
	account.NewListAccountsHandler(svc.Account).Register(api)
	account.NewUpdateAccountHandler(svc.Account).Register(api)
	account.NewDeleteAccountHandler(svc.Account).Register(api)

	category.NewCreateCategoryHandler(svc.Category).Register(api)
	category.NewGetCategoryHandler(svc.Category).Register(api)
	category.NewListCategoriesHandler(svc.Category).Register(api)
	category.NewUpdateCategoryHandler(svc.Category).Register(api)
	category.NewDeleteCategoryHandler(svc.Category).Register(api)

	budget.NewCreateBudgetHandler(svc.Budget).Register(api)
	budget.NewGetBudgetHandler(svc.Budget).Register(api)
	budget.NewListBudgetsHandler(svc.Budget).Register(api)
	budget.NewUpdateBudgetHandler(svc.Budget).Register(api)
	budget.NewDeleteBudgetHandler(svc.Budget).Register(api)

	transaction.NewCreateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewGetTransactionHandler(svc.Transaction).Register(api)
	transaction.NewListTransactionsHandler(svc.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(svc.Transaction).Register(api)
}
