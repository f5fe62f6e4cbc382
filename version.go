package recall

// Version is the published SDK version.
// 0.3.0: Breaking - operations return *Response[T] envelopes instead of bare
// values so 422 payloads and undeclared statuses are first-class data.
// 0.2.0: Add Optional sum type and unknown-field preservation on all models.
const Version = "0.3.0"
