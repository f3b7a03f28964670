package config

type Config struct {
	ZammadURL              string `env:"ZAMMAD_URL" envDefault:"http://zammad-nginx:8080" validate:"required"`
	ZammadGroup            string `env:"ZAMMAD_GROUP" envDefault:"Declarations GNSS" validate:"required"`
	ZammadToken            string `env:"ZAMMAD_TOKEN"`
	ZammadPublicURL        string `env:"ZAMMAD_PUBLIC_URL"`
	ZammadPasswordResetURL string `env:"ZAMMAD_PASSWORD_RESET_URL"`

	HelpdeskName     string `env:"HELPDESK_NAME" envDefault:"Centipede-RTK Helpdesk"`
	HelpdeskTermsURL string `env:"HELPDESK_TERMS_URL" envDefault:"https://www.centipede-rtk.org/terms-conditions"`
	HelpdeskLogoFile string `env:"HELPDESK_LOGO_FILE" envDefault:"assets/centipede-rtk-logo.png"`

	GrafanaDSQueryURL string `env:"GRAFANA_DS_QUERY_URL" envDefault:"https://gf.centipede-rtk.org/api/ds/query?ds_type=grafana-postgresql-datasource"`
	GrafanaOrgID      string `env:"GRAFANA_ORG_ID" envDefault:"7"`
	GrafanaDSUID      string `env:"GRAFANA_DS_UID" envDefault:"ef4dj94eoifpcf"`
	GrafanaDSID       int    `env:"GRAFANA_DS_ID" envDefault:"24"`
	GrafanaTimeoutMs  int    `env:"GRAFANA_TIMEOUT_MS" envDefault:"8000" validate:"gt=0"`
	GrafanaAuthHeader string `env:"GRAFANA_AUTH_HEADER"`

	MountPointCacheTTLMs int  `env:"MP_CACHE_TTL_MS" envDefault:"300000" validate:"gt=0"`
	ConfirmEmail         bool `env:"CONFIRM_EMAIL" envDefault:"true"`

	CORSOrigins       []string `env:"CORS_ORIGINS" envDefault:"*" validate:"min=1"`
	FrancophoneAlpha3 []string `env:"FRANCOPHONE_ALPHA3"`
}
