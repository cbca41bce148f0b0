package probe

var CheckIdentity = checkIdentity
