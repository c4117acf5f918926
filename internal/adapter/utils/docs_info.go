package utils

//run redis (optional, jobs fall back to memory)
//docker run -p 6379:6379 -d redis

//run the form + api
//OPENAI_API_KEY=... go run ./cmd/api

//run the mcp tool server over stdio
//OPENAI_API_KEY=... go run ./cmd/mcp

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
