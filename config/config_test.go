package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"COMPANY_NAME", "QUOTE_VALID_DAYS", "DEFAULT_TAX_RATE", "STATIC_DIR", "PDF_FONT_PATH"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.CompanyName != "宇珅活動有限公司" {
		t.Errorf("CompanyName = %q", cfg.CompanyName)
	}
	if cfg.QuoteValidDays != 15 {
		t.Errorf("QuoteValidDays = %d, want 15", cfg.QuoteValidDays)
	}
	if cfg.DefaultTaxRate != 0.05 {
		t.Errorf("DefaultTaxRate = %v, want 0.05", cfg.DefaultTaxRate)
	}
	if cfg.StaticDir != "./static" {
		t.Errorf("StaticDir = %q, want ./static", cfg.StaticDir)
	}
	if cfg.FontPath != "" {
		t.Errorf("FontPath = %q, want empty", cfg.FontPath)
	}
	if cfg.QuoteTerms != DefaultQuoteTerms {
		t.Errorf("QuoteTerms = %q", cfg.QuoteTerms)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("COMPANY_NAME", "Acme AV")
	t.Setenv("QUOTE_VALID_DAYS", "30")
	t.Setenv("DEFAULT_TAX_RATE", "0.1")

	cfg := Load()

	if cfg.CompanyName != "Acme AV" {
		t.Errorf("CompanyName = %q, want Acme AV", cfg.CompanyName)
	}
	if cfg.QuoteValidDays != 30 {
		t.Errorf("QuoteValidDays = %d, want 30", cfg.QuoteValidDays)
	}
	if cfg.DefaultTaxRate != 0.1 {
		t.Errorf("DefaultTaxRate = %v, want 0.1", cfg.DefaultTaxRate)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("QUOTE_VALID_DAYS", "fifteen")
	t.Setenv("DEFAULT_TAX_RATE", "five percent")

	cfg := Load()

	if cfg.QuoteValidDays != 15 {
		t.Errorf("QuoteValidDays = %d, want 15", cfg.QuoteValidDays)
	}
	if cfg.DefaultTaxRate != 0.05 {
		t.Errorf("DefaultTaxRate = %v, want 0.05", cfg.DefaultTaxRate)
	}
}
