package settings

import "github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (БД или транзакция)
type DBExecutor = dbmetrics.DBExecutor
