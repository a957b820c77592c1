package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/model"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/session"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	// Login verifies credentials and opens a session; the returned token is
	// an opaque bearer token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Me resolves the session behind a token.
	Me(ctx context.Context, token string) (*dto.UtilisateurResponse, error)
}

type authService struct {
	repo       repository.UtilisateurRepository
	journal    repository.JournalRepository
	store      session.Store
	sessionTTL time.Duration
}

func NewAuthService(repo repository.UtilisateurRepository, journal repository.JournalRepository, store session.Store, sessionTTL time.Duration) AuthService {
	return &authService{repo: repo, journal: journal, store: store, sessionTTL: sessionTTL}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a bad password, to not leak which usernames exist.
			return nil, ErrPermissionDenied("identifiants invalides")
		}
		return nil, err
	}
	if !u.Actif {
		return nil, ErrPermissionDenied("compte désactivé")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		_ = s.journal.Append(ctx, &model.JournalLog{
			UtilisateurID: &u.ID,
			Action:        "LOGIN_ECHEC",
			Statut:        "echec",
			Description:   fmt.Sprintf("mot de passe erroné pour %s", u.Username),
		})
		return nil, ErrPermissionDenied("identifiants invalides")
	}

	token, err := s.store.Set(ctx, session.Session{
		UtilisateurID: u.ID,
		Username:      u.Username,
		Role:          u.Role,
	}, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	maintenant := time.Now()
	if err := s.repo.SetDerniereConnexion(ctx, u.ID, maintenant); err != nil {
		log.Warn().Err(err).Str("username", u.Username).Msg("échec de mise à jour de derniere_connexion")
	}
	u.DerniereConnexion = &maintenant

	_ = s.journal.Append(ctx, &model.JournalLog{
		UtilisateurID: &u.ID,
		Action:        "LOGIN",
		Description:   fmt.Sprintf("connexion de %s (%s)", u.Username, u.Role),
	})

	log.Info().Str("username", u.Username).Str("role", u.Role).Msg("connexion réussie")

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.sessionTTL.Seconds()),
		User:      *utilisateurToResponse(u),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, token); err != nil {
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, token string) (*dto.UtilisateurResponse, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrPermissionDenied("session expirée ou invalide")
		}
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, sess.UtilisateurID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("utilisateur introuvable")
		}
		return nil, err
	}
	return utilisateurToResponse(u), nil
}

func utilisateurToResponse(u *model.Utilisateur) *dto.UtilisateurResponse {
	resp := &dto.UtilisateurResponse{
		ID:         u.ID,
		Username:   u.Username,
		NomComplet: u.NomComplet,
		Role:       u.Role,
		Actif:      u.Actif,
	}
	if u.DerniereConnexion != nil {
		s := u.DerniereConnexion.Format(dateTimeFormat)
		resp.DerniereConnexion = &s
	}
	return resp
}
