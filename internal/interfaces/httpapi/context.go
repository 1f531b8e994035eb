package httpapi

import "context"

type contextKey string

const orgContextKey contextKey = "org_id"

func withOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, orgContextKey, orgID)
}

func orgIDFromContext(ctx context.Context) (string, bool) {
	orgID, ok := ctx.Value(orgContextKey).(string)
	return orgID, ok && orgID != ""
}
