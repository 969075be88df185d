package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBDSN     string
	JWTSecret string

	// PetDogPrice exists because the legacy site priced a dog add-on at 13
	// inside the reservation flow and 20 on the landing panel. Product still
	// has to confirm one of them; the flow value 13 is the default and
	// PRICE_PET_DOG can override it.
	PetDogPrice float64
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	dogPrice := 13.0
	if raw := strings.TrimSpace(os.Getenv("PRICE_PET_DOG")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			dogPrice = v
		}
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     ginMode,
		DBDSN:       strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret:   secret,
		PetDogPrice: dogPrice,
	}
}
