package router

import (
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/config"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/handler"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/middleware"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/session"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	store := session.NewRedisStore(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	utilisateurRepo := repository.NewUtilisateurRepository(db)
	produitRepo := repository.NewProduitRepository(db)
	abonneRepo := repository.NewAbonneRepository(db)
	consoRepo := repository.NewConsommationRepository(db)
	factureRepo := repository.NewFactureRepository(db)
	paiementRepo := repository.NewPaiementRepository(db)
	mouvementRepo := repository.NewMouvementStockRepository(db)
	comptaRepo := repository.NewComptaRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	fournisseurRepo := repository.NewFournisseurRepository(db)
	parametresRepo := repository.NewParametresRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(utilisateurRepo, journalRepo, store, sessionTTL)
	stockSvc := service.NewStockService(produitRepo, mouvementRepo, journalRepo)
	produitSvc := service.NewProduitService(produitRepo, journalRepo, stockSvc)
	abonneSvc := service.NewAbonneService(abonneRepo, journalRepo)
	consoSvc := service.NewConsommationService(consoRepo, abonneRepo, produitRepo, factureRepo, parametresRepo, journalRepo, stockSvc)
	factureSvc := service.NewFactureService(factureRepo, consoRepo, abonneRepo, parametresRepo, journalRepo, dispatcher)
	paiementSvc := service.NewPaiementService(paiementRepo, factureRepo, comptaRepo, journalRepo)
	comptaSvc := service.NewComptaService(comptaRepo, parametresRepo, journalRepo)
	journalSvc := service.NewJournalService(journalRepo)
	fournisseurSvc := service.NewFournisseurService(fournisseurRepo, journalRepo)
	utilisateurSvc := service.NewUtilisateurService(utilisateurRepo, journalRepo)
	parametresSvc := service.NewParametresService(parametresRepo, journalRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produitsH := handler.NewProduitsHandler(produitSvc)
	abonnesH := handler.NewAbonnesHandler(abonneSvc, factureSvc)
	consosH := handler.NewConsommationsHandler(consoSvc)
	facturesH := handler.NewFacturesHandler(factureSvc)
	paiementsH := handler.NewPaiementsHandler(paiementSvc)
	stockH := handler.NewStockHandler(stockSvc)
	comptaH := handler.NewComptaHandler(comptaSvc)
	journalH := handler.NewJournalHandler(journalSvc)
	fournisseursH := handler.NewFournisseurHandler(fournisseurSvc)
	utilisateursH := handler.NewUtilisateurHandler(utilisateurSvc)
	parametresH := handler.NewParametresHandler(parametresSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	authMW := middleware.SessionAuth(store, sessionTTL)
	v1 := r.Group("/v1", authMW)
	{
		// Roles: vendeur, gerant, admin — declared per-endpoint
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)

		// Produits — tous les rôles lisent, gerant/admin écrivent
		tous := middleware.RequireRole("vendeur", "gerant", "admin")
		gestion := middleware.RequireRole("gerant", "admin")
		adminSeul := middleware.RequireRole("admin")

		v1.GET("/produits", tous, produitsH.Lister)
		v1.GET("/produits/:id", tous, produitsH.Obtenir)
		prods := v1.Group("/produits", gestion)
		{
			prods.POST("", produitsH.Creer)
			prods.PATCH("/:id", produitsH.Actualiser)
			prods.DELETE("/:id", produitsH.Desactiver)
			prods.PATCH("/:id/reactiver", produitsH.Reactiver)
		}

		// Abonnés
		v1.GET("/abonnes", tous, abonnesH.Lister)
		v1.GET("/abonnes/:id", tous, abonnesH.Obtenir)
		v1.GET("/abonnes/:id/consommations-non-facturees", tous, abonnesH.NonFacturees)
		abonnes := v1.Group("/abonnes", gestion)
		{
			abonnes.POST("", abonnesH.Creer)
			abonnes.PATCH("/:id", abonnesH.Actualiser)
			abonnes.DELETE("/:id", abonnesH.Desactiver)
			abonnes.PATCH("/:id/reactiver", abonnesH.Reactiver)
		}

		// Consommations — la vente au comptoir est le métier du vendeur
		v1.POST("/consommations", tous, consosH.Enregistrer)
		v1.GET("/consommations", tous, consosH.Lister)
		v1.GET("/consommations/stats", tous, consosH.Stats)
		v1.GET("/consommations/:id", tous, consosH.Obtenir)
		v1.PATCH("/consommations/:id", gestion, consosH.Actualiser)
		v1.DELETE("/consommations/:id", adminSeul, consosH.Supprimer)

		// Factures
		v1.GET("/factures", tous, facturesH.Lister)
		v1.GET("/factures/:id", tous, facturesH.Obtenir)
		v1.GET("/factures/:id/pdf", tous, facturesH.TelechargerPDF)
		v1.POST("/factures", gestion, facturesH.Creer)
		v1.PATCH("/factures/:id", gestion, facturesH.Actualiser)
		v1.DELETE("/factures/:id", adminSeul, facturesH.Supprimer)

		// Paiements — encaissés au comptoir par tous les rôles
		v1.POST("/paiements", tous, paiementsH.Appliquer)
		v1.GET("/paiements", tous, paiementsH.Lister)
		v1.GET("/paiements/:id", tous, paiementsH.Obtenir)
		v1.DELETE("/paiements/:id", adminSeul, paiementsH.Supprimer)

		// Stock
		stock := v1.Group("/stock", gestion)
		{
			stock.POST("/entree", stockH.Entree)
			stock.POST("/sortie", stockH.Sortie)
			stock.POST("/ajustement", stockH.Ajustement)
			stock.GET("/mouvements", stockH.Mouvements)
			stock.GET("/valeur", stockH.Valeur)
		}
		v1.GET("/stock/alertes", tous, stockH.Alertes)

		// Comptabilité
		compta := v1.Group("/compta", gestion)
		{
			compta.POST("", comptaH.Enregistrer)
			compta.GET("", comptaH.Lister)
			compta.GET("/solde", comptaH.Solde)
			compta.GET("/rapport", comptaH.Rapport)
		}

		// Fournisseurs
		fournisseurs := v1.Group("/fournisseurs", gestion)
		{
			fournisseurs.POST("", fournisseursH.Creer)
			fournisseurs.GET("", fournisseursH.Lister)
			fournisseurs.GET("/:id", fournisseursH.Obtenir)
			fournisseurs.PATCH("/:id", fournisseursH.Actualiser)
			fournisseurs.DELETE("/:id", fournisseursH.Desactiver)
			fournisseurs.PATCH("/:id/reactiver", fournisseursH.Reactiver)
		}

		// Utilisateurs — admin uniquement
		utilisateurs := v1.Group("/utilisateurs", adminSeul)
		{
			utilisateurs.POST("", utilisateursH.Creer)
			utilisateurs.GET("", utilisateursH.Lister)
			utilisateurs.PATCH("/:id", utilisateursH.Actualiser)
			utilisateurs.DELETE("/:id", utilisateursH.Desactiver)
		}

		// Journal d'audit — admin uniquement
		v1.GET("/journal", adminSeul, journalH.Lister)

		// Paramètres
		v1.GET("/parametres", gestion, parametresH.Obtenir)
		v1.PATCH("/parametres", adminSeul, parametresH.Actualiser)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
