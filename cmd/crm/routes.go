package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"crm-golang/http-server/accounts"
	"crm-golang/http-server/activities"
	"crm-golang/http-server/admin/pipelines"
	"crm-golang/http-server/contacts"
	"crm-golang/http-server/dashboard"
	dealdraft "crm-golang/http-server/deals/draft"
	getdeals "crm-golang/http-server/deals/get"
	savedeals "crm-golang/http-server/deals/save"
	updeals "crm-golang/http-server/deals/update"
	generate_excel "crm-golang/http-server/generate-report/generate-excel"
	getleads "crm-golang/http-server/leads/get"
	saveleads "crm-golang/http-server/leads/save"
	upleads "crm-golang/http-server/leads/update"
	"crm-golang/http-server/meetings"
	"crm-golang/http-server/meta"
	syncapi "crm-golang/http-server/sync"
	"crm-golang/http-server/tasks"
	"crm-golang/internal/config"
	"crm-golang/internal/draft"
	"crm-golang/internal/middleware/auth"
	"crm-golang/internal/service"
	generate_excel2 "crm-golang/internal/service/generate-excel"
	"crm-golang/internal/storage/mysql"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *mysql.Storage,
	drafts *draft.FileStore,
	dealService *service.DealService,
	dashboardService *service.DashboardService,
	syncService *service.SyncService,
	genService *generate_excel2.GenerateExcelService,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(api chi.Router) {
		api.Use(auth.JWT(cfg.JWTSecret))

		api.Get("/leads", getleads.GetLeadsFilter(log, storage))
		api.Post("/leads", saveleads.SaveLead(log, storage))
		api.Get("/leads/{id}", getleads.GetLead(log, storage))
		api.Patch("/leads/{id}", upleads.UpdateLead(log, storage))
		api.Delete("/leads/{id}", upleads.DeleteLead(log, storage))
		api.Get("/leads/{id}/activities", getleads.GetLeadActivities(log, storage))
		api.Get("/leads/{id}/contacts", getleads.GetLeadContacts(log, storage))
		api.Get("/leads/{id}/deals", getleads.GetLeadDeals(log, storage))
		api.Get("/leads/{id}/files", getleads.GetLeadFiles(log, storage))

		api.Get("/accounts", accounts.GetAccounts(log, storage))
		api.Post("/accounts", accounts.SaveAccount(log, storage))
		api.Get("/accounts/{id}", accounts.GetAccount(log, storage))
		api.Patch("/accounts/{id}", accounts.UpdateAccount(log, storage))
		api.Delete("/accounts/{id}", accounts.DeleteAccount(log, storage))
		api.Get("/accounts/{id}/activities", accounts.GetAccountActivities(log, storage))
		api.Get("/accounts/{id}/sync-status", accounts.GetAccountSyncStatus(log, syncService))
		api.Post("/accounts/{id}/sync-activities", accounts.SyncAccountActivities(log, syncService))
		api.Post("/accounts/{id}/sync-to-leadgen", accounts.SyncAccountToLeadgen(log, syncService))
		api.Post("/accounts/{id}/enrich", accounts.EnrichAccount(log, syncService))
		api.Get("/accounts/{id}/enrichment", accounts.GetAccountEnrichment(log, syncService))

		api.Get("/contacts", contacts.GetContacts(log, storage))
		api.Post("/contacts", contacts.SaveContact(log, storage))
		api.Get("/contacts/by-account/{id}", contacts.GetContactsByAccount(log, storage))
		api.Get("/contacts/{id}", contacts.GetContact(log, storage))
		api.Patch("/contacts/{id}", contacts.UpdateContact(log, storage))
		api.Delete("/contacts/{id}", contacts.DeleteContact(log, storage))

		// the draft slot must win over the {id} route
		api.Get("/deals/draft", dealdraft.GetDraft(log, drafts))
		api.Put("/deals/draft", dealdraft.SaveDraft(log, drafts))
		api.Delete("/deals/draft", dealdraft.ClearDraft(log, drafts))

		api.Get("/deals", getdeals.GetDeals(log, storage))
		api.Post("/deals", savedeals.SaveDeal(log, dealService))
		api.Get("/deals/{id}", getdeals.GetDeal(log, storage))
		api.Get("/deals/by-account/{id}", getdeals.GetDealsByAccount(log, storage))
		api.Patch("/deals/{id}", updeals.UpdateDeal(log, storage))
		api.Delete("/deals/{id}", updeals.DeleteDeal(log, storage))

		api.Get("/activities", activities.GetActivities(log, storage))
		api.Post("/activities", activities.SaveActivity(log, storage))
		api.Patch("/activities/{id}", activities.UpdateActivity(log, storage))
		api.Delete("/activities/{id}", activities.DeleteActivity(log, storage))

		api.Get("/tasks", tasks.GetTasks(log, storage))
		api.Post("/tasks", tasks.SaveTask(log, storage))
		api.Patch("/tasks/{id}", tasks.UpdateTask(log, storage))
		api.Delete("/tasks/{id}", tasks.DeleteTask(log, storage))

		api.Get("/meetings", meetings.GetMeetings(log, storage))
		api.Post("/meetings", meetings.SaveMeeting(log, storage))
		api.Delete("/meetings/{id}", meetings.DeleteMeeting(log, storage))

		api.Post("/sync/manual/{module}", syncapi.ManualSync(log, syncService))
		api.Get("/sync/status", syncapi.GetSyncStatus(log, syncService))

		api.Get("/dashboard/summary", dashboard.GetSummary(log, dashboardService))
		api.Get("/meta/lists", meta.GetLists())

		api.Get("/report/excel", generate_excel.GenerateReportExcel(log, genService))
	})

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/pipelines", pipelines.GetPipelines(log, storage))
	adminRouter.Get("/pipelines/{id}", pipelines.GetPipeline(log, storage))
	adminRouter.Put("/pipelines/{id}", pipelines.UpdatePipeline(log, storage))

	router.Mount("/admin", adminRouter)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
