// Package config loads loopauth configuration.
//
// Configuration is read from config.yaml in a single directory (default
// ~/.config/loopauth, or the --config-path flag). A missing file is not an
// error: the defaults reproduce the fixed loopback range 38714-38724, a five
// minute wait and a 500x600 sign-in window.
//
// Every value can be overridden from the environment with the LOOPAUTH_
// prefix, for example:
//
//	LOOPAUTH_PROVIDER_CLIENT_ID=...apps.googleusercontent.com
//	LOOPAUTH_FLOW_TIMEOUT=2m
//	LOOPAUTH_LISTENER_PORT_START=40000
//
// Example config.yaml:
//
//	listener:
//	  host: 127.0.0.1
//	  portStart: 38714
//	  portEnd: 38724
//	flow:
//	  timeout: 300s
//	provider:
//	  clientID: 1234.apps.googleusercontent.com
//	  scopes: [openid, email, profile]
//	log:
//	  level: debug
//	  file: /tmp/loopauth.log
package config
