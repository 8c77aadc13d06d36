package config

type Settings struct {
	APIKey     string `validate:"required"`
	BaseURL    string `validate:"required,url"`
	Timeout    int    `validate:"gte=0"` // seconds, 0 = no client timeout
	MaxRetries int    `validate:"gte=0,lte=10"`
	PerPage    int    `validate:"gte=3"`
	CaCert     string // CA certificate file path
	SSLVerify  bool
	OrgName    string `validate:"required"`
	CSVFile    string // required by the apply run only
	Overwrite  bool
	Debug      bool
	LogFile    string
}

type Config struct {
	Dashboard struct {
		APIKey     string `ini:"api_key"`
		BaseURL    string `ini:"base_url"`
		Timeout    *int   `ini:"timeout"`
		MaxRetries *int   `ini:"max_retries"`
		PerPage    int    `ini:"per_page"`
		CaCert     string `ini:"ca_cert"`
		SSLVerify  *bool  `ini:"ssl_verify"`
	} `ini:"dashboard"`
	Organization struct {
		Name string `ini:"name"`
	} `ini:"organization"`
	Exclusions struct {
		CSVFile   string `ini:"csv_file"`
		Overwrite bool   `ini:"overwrite"`
	} `ini:"exclusions"`
	Logging struct {
		Debug bool   `ini:"debug"`
		File  string `ini:"file"`
	} `ini:"logging"`
}

// Overrides carries values given on the command line. Empty strings and nil
// pointers leave the file/environment value untouched.
type Overrides struct {
	APIKey    string
	BaseURL   string
	OrgName   string
	CSVFile   string
	LogFile   string
	Overwrite *bool
	Debug     *bool
}
