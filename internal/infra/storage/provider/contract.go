package provider

import "github.com/m04kA/WorkSlot-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
