package metadata

// Metadata is the singleton document tracking aggregate counters.
// Exactly one document carries DocumentIsMetadata=true.
type Metadata struct {
	DocumentIsMetadata bool  `bson:"documentIsMetadata"`
	UsersRegistered    int64 `bson:"usersRegistered"`
}
