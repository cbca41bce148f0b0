package wallet

//nolint:gochecknoglobals
var CheckNetwork = checkNetwork
