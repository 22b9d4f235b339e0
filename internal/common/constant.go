package common

// AuthorizationHeaderName carries the raw session token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// DefaultAgentImageURL is stored when an agent is created without an image.
const DefaultAgentImageURL = "image_placeholder.png"
