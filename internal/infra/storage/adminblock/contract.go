package adminblock

import "github.com/yaduk2001/selling-sub001/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
