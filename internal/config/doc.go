// Package config reads the project file of a widgets project.
//
// The file is widgets.json or widgets.yaml at the project root:
//
//	{
//	  "request": {
//	    "type": "json",
//	    "timeout": 10000,
//	    "baseURL": "https://api.example.com"
//	  },
//	  "serve": {
//	    "port": 3000,
//	    "host": "localhost",
//	    "document": "index.html",
//	    "page": "home",
//	    "watch": ["."]
//	  },
//	  "scripts": {
//	    "urls": ["https://cdn.example.com/chart.js"],
//	    "s3Region": "us-east-1"
//	  },
//	  "metrics": {
//	    "namespace": "widgets"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Apply() // request defaults go to the runtime map in pkg/config
package config
