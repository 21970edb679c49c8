package instance

import "github.com/angelmondragon/ridefinderz-filters/pkg/env"

// GetID returns the process instance identifier. Hosted dynos report DYNO;
// anything else may set RIDEFINDERZ_INSTANCE_ID.
func GetID() string {
	if id, ok := env.First("DYNO", "RIDEFINDERZ_INSTANCE_ID"); ok {
		return id
	}
	return "local"
}
