package config

// AssetCacheVersion names the service-worker cache generation. Changing it
// invalidates every previously cached asset on the next activation.
const AssetCacheVersion = "carteirinha-pwa-v4"

// AssetPaths lists the static assets the PWA service worker precaches.
// Served to the client by the public asset-manifest endpoint.
var AssetPaths = []string{
	"./",
	"./index.html",
	"./styles.css",
	"./app.js",
	"./manifest.webmanifest",
	"./icons/favicon-16x16.png",
	"./icons/favicon-32x32.png",
	"./icons/android-chrome-192x192.png",
	"./icons/android-chrome-512x512.png",
	"./icons/apple-touch-icon.png",
}
