package common

// BearerScheme is the Authorization header scheme carrying access tokens:
//
//	Authorization: Bearer <token>
const BearerScheme = "Bearer"
