package middleware

var RequestErrorsTotal = requestErrorsTotal
