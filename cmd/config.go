package cmd

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	PageSize          int
	RefundOnCancel    bool
	RefundBatchSize   int
	RefundMaxAttempts int
}
