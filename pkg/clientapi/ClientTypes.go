package clientapi

import clog "github.com/tcondon31/3700kvstore/pkg/logger"


const NAME = "ClientAPI"

var Log = clog.NewCustomLog(NAME)
