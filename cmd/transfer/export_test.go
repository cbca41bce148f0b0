package transfer

var LoadBatch = loadBatch
