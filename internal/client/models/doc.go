// Package models defines the client-side data model of the training portal:
// identities, videos, categories, and the input DTOs sent on create/update.
// Server-owned fields (ids, timestamps) only appear on the read models.
package models
