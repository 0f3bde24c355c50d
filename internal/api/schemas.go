package api

import "business-dashboard/internal/common/validation"

// Response schemas check shape and types only. Absent collections are allowed
// and decode as empty.
var (
	authStatusSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["isAuthenticated"],
  "properties": {
    "isAuthenticated": {"type": "boolean"},
    "user": {
      "type": ["object", "null"],
      "properties": {
        "name": {"type": "string"},
        "email": {"type": "string"},
        "photo": {"type": "string"}
      }
    }
  }
}`)

	snapshotSchema = validation.MustCompile(`{
  "type": "object",
  "properties": {
    "profile": {"oneOf": [{"type": "null"}, ` + profileDef + `]},
    "posts": {"type": ["array", "null"], "items": ` + postDef + `},
    "reviews": {"type": ["array", "null"], "items": ` + reviewDef + `},
    "analytics": {"oneOf": [{"type": "null"}, ` + analyticsDef + `]},
    "locations": {"type": ["array", "null"], "items": ` + locationDef + `},
    "locationGroups": {"type": ["array", "null"], "items": ` + locationGroupDef + `}
  }
}`)

	profileSchema = validation.MustCompile(profileDef)
	postSchema    = validation.MustCompile(postDef)
	reviewSchema  = validation.MustCompile(reviewDef)
)

const profileDef = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "category": {"type": "string"},
    "address": {"type": "string"},
    "phone": {"type": "string"},
    "website": {"type": "string"},
    "hours": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "day": {"type": "string"},
          "time": {"type": "string"}
        }
      }
    }
  }
}`

const postDef = `{
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": {"type": "integer"},
    "content": {"type": "string"},
    "date": {"type": "string"},
    "image": {"type": "string"},
    "views": {"type": "integer"},
    "clicks": {"type": "integer"}
  }
}`

const reviewDef = `{
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": {"type": "integer"},
    "author": {"type": "string"},
    "avatar": {"type": "string"},
    "rating": {"type": "integer", "minimum": 1, "maximum": 5},
    "content": {"type": "string"},
    "date": {"type": "string"},
    "reply": {"type": ["string", "null"]}
  }
}`

const analyticsDef = `{
  "type": "object",
  "properties": {
    "performance": {
      "type": "object",
      "properties": {
        "viewsSearch": {"type": "integer"},
        "viewsMaps": {"type": "integer"},
        "searches": {"type": "integer"},
        "customerActions": {
          "type": "object",
          "properties": {
            "calls": {"type": "integer"},
            "directions": {"type": "integer"},
            "websiteVisits": {"type": "integer"}
          }
        }
      }
    },
    "queries": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "query": {"type": "string"},
          "count": {"type": "integer"}
        }
      }
    },
    "photoViews": {"type": "integer"},
    "lifetimeReviews": {"type": "integer"}
  }
}`

const locationDef = `{
  "type": "object",
  "properties": {
    "id": {"type": "string"},
    "name": {"type": "string"},
    "group": {"type": "string"}
  }
}`

const locationGroupDef = `{
  "type": "object",
  "properties": {
    "id": {"type": "string"},
    "name": {"type": "string"}
  }
}`
