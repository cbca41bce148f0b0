package keystore

var Create = create
