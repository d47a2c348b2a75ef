package main

import (
	"context"
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/config"
	"github.com/Windi-Fikriyansyah/contadores/internal/db"
	"github.com/Windi-Fikriyansyah/contadores/internal/logger"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/repository"
	"github.com/Windi-Fikriyansyah/contadores/internal/utils"
)

type seedAccountant struct {
	Name         string
	Specialty    string
	Score        float64
	RatingCount  int64
	Photo        string
	Tags         []string
	ResponseTime string
	Location     string
	Description  string
	Experience   string
	Education    string
}

var initialAccountants = []seedAccountant{
	{
		Name:         "Dr. João Silva",
		Specialty:    "Especialista em Tributário e MEI",
		Score:        5.0,
		RatingCount:  35,
		Photo:        "https://i.pravatar.cc/150?img=12",
		Tags:         []string{"MEI", "Pequenas Empresas", "Consultoria"},
		ResponseTime: "2 horas",
		Location:     "São Paulo, SP",
		Description:  "Especialista em contabilidade para MEI e pequenas empresas com 10 anos de experiência.",
		Experience:   "10 anos",
		Education:    "CRC Ativo, Pós em Direito Tributário",
	},
	{
		Name:         "Dra. Maria Santos",
		Specialty:    "Contabilidade Empresarial Avançada",
		Score:        4.8,
		RatingCount:  42,
		Photo:        "https://i.pravatar.cc/150?img=8",
		Tags:         []string{"Médias Empresas", "Auditoria", "BPO"},
		ResponseTime: "1 hora",
		Location:     "Rio de Janeiro, RJ",
		Description:  "Contadora especializada em empresas de médio porte e auditoria.",
		Experience:   "8 anos",
		Education:    "CRC Ativo, Mestrado em Controladoria",
	},
	{
		Name:         "Dr. Carlos Oliveira",
		Specialty:    "Folha de Pagamento e DP",
		Score:        4.9,
		RatingCount:  28,
		Photo:        "https://i.pravatar.cc/150?img=5",
		Tags:         []string{"Folha de Pagamento", "DP", "eSocial"},
		ResponseTime: "3 horas",
		Location:     "Belo Horizonte, MG",
		Description:  "Especialista em departamento pessoal e folha de pagamento.",
		Experience:   "12 anos",
		Education:    "CRC Ativo, Graduação em Ciências Contábeis",
	},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init("contadores-seed", cfg.AppEnv)

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gdb)

	admin := &models.User{
		Name:  "Administrador Sistema",
		Email: "admin@contadores.com",
		Role:  models.RoleAdmin,
		Photo: "https://i.pravatar.cc/150?img=12",
	}
	if err := seedUser(ctx, users, admin, "admin123", nil); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	for _, s := range initialAccountants {
		u := &models.User{
			Name:  s.Name,
			Email: strings.ReplaceAll(strings.ToLower(s.Name), " ", ".") + "@contadores.com",
			Role:  models.RoleAccountant,
			Photo: s.Photo,
		}
		acc := &models.Accountant{
			Name:         s.Name,
			Specialty:    s.Specialty,
			Score:        s.Score,
			RatingCount:  s.RatingCount,
			Photo:        s.Photo,
			Tags:         datatypes.JSONSlice[string](s.Tags),
			ResponseTime: s.ResponseTime,
			Location:     s.Location,
			Description:  s.Description,
			Verified:     true,
			Active:       true,
			Experience:   s.Experience,
			Education:    s.Education,
		}
		if err := seedUser(ctx, users, u, "senha123", acc); err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("seed accountant")
		}
	}

	log.Info().Msg("seed completed")
}

// seedUser creates u (and acc) unless a user with the same email exists.
func seedUser(ctx context.Context, users repository.UserRepository, u *models.User, password string, acc *models.Accountant) error {
	if _, err := users.FindByEmail(ctx, u.Email); err == nil {
		log.Info().Str("email", u.Email).Msg("already seeded, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hash

	if err := users.CreateWithAccountant(ctx, u, acc); err != nil {
		return err
	}
	log.Info().Str("email", u.Email).Msg("seeded")
	return nil
}
