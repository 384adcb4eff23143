// Package config reads application settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultQuoteTerms is printed above the signature block of every quote.
const DefaultQuoteTerms = "請確認後簽名或蓋章回傳本公司，此報價單簽認即視同合約書，若有任何疑問請與承辦業務確認，本估價單有效期限 15 天。"

// Config holds the company details printed on documents and the locations of
// static assets.
type Config struct {
	CompanyName    string
	CompanyTaxID   string
	SalesName      string
	SalesPhone     string
	QuoteValidDays int
	QuoteTerms     string
	DefaultTaxRate float64
	StaticDir      string
	FontPath       string
	LogoPath       string
}

// Load reads the configuration. A .env file in the working directory is
// loaded first when present; explicit environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		CompanyName:    getEnv("COMPANY_NAME", "宇珅活動有限公司"),
		CompanyTaxID:   getEnv("COMPANY_TAX_ID", "52347411"),
		SalesName:      getEnv("SALES_NAME", "林宇珅"),
		SalesPhone:     getEnv("SALES_PHONE", "0912-345-678"),
		QuoteValidDays: getInt("QUOTE_VALID_DAYS", 15),
		QuoteTerms:     getEnv("QUOTE_TERMS", DefaultQuoteTerms),
		DefaultTaxRate: getFloat("DEFAULT_TAX_RATE", 0.05),
		StaticDir:      getEnv("STATIC_DIR", "./static"),
		FontPath:       getEnv("PDF_FONT_PATH", ""),
		LogoPath:       getEnv("LOGO_PATH", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("config: invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("config: invalid number for %s: %s", key, v)
			return def
		}
		return f
	}
	return def
}
