package renderer

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uViewProj;
uniform mat3 uNormalMatrix;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = uNormalMatrix * aNormal;
    vUV = aUV;
    gl_Position = uViewProj * world;
}
`

const litFragmentShader = `
#version 410 core

#define MAX_SPOTS 4
#define PI 3.14159265

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;

uniform vec3 uCameraPos;

// Material
uniform vec3 uColor;
uniform float uOpacity;
uniform float uRoughness;
uniform float uMetalness;
uniform vec3 uEmissive;
uniform float uClearcoat;
uniform float uClearcoatRoughness;
uniform float uEnvIntensity;
uniform bool uDoubleSided;
uniform bool uHasTexture;
uniform sampler2D uBaseColor;
uniform bool uReceiveShadow;

// Mask pass: bloom meshes shade as usual, everything else is black
uniform bool uMask;
uniform bool uBloom;

uniform vec3 uAmbient;

uniform vec3 uDirColor;
uniform vec3 uDirToLight;
uniform bool uDirShadow;
uniform mat4 uDirMatrix;
uniform sampler2DShadow uDirShadowMap;

uniform int uSpotCount;
uniform vec3 uSpotPos[MAX_SPOTS];
uniform vec3 uSpotDir[MAX_SPOTS];
uniform vec3 uSpotColor[MAX_SPOTS];
uniform vec4 uSpotCone[MAX_SPOTS]; // cos outer, cos inner, distance, decay
uniform int uSpotShadow[MAX_SPOTS];
uniform mat4 uSpotMatrix[MAX_SPOTS];
uniform sampler2DShadow uSpotShadowMap[MAX_SPOTS];

out vec4 FragColor;

float shadowPCF(sampler2DShadow map, mat4 lightMatrix, vec3 worldPos) {
    vec4 lp = lightMatrix * vec4(worldPos, 1.0);
    vec3 c = lp.xyz / lp.w * 0.5 + 0.5;
    if (c.z > 1.0) {
        return 1.0;
    }
    vec2 texel = 1.0 / vec2(textureSize(map, 0));
    float lit = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            lit += texture(map, vec3(c.xy + vec2(x, y) * texel, c.z));
        }
    }
    return lit / 9.0;
}

float specularLobe(vec3 N, vec3 H, float roughness) {
    float a = max(roughness * roughness, 0.002);
    float shininess = 2.0 / (a * a) - 2.0;
    return pow(max(dot(N, H), 0.0), shininess) * (shininess + 8.0) / (8.0 * PI);
}

vec3 shade(vec3 N, vec3 V, vec3 L, vec3 albedo) {
    float NdotL = max(dot(N, L), 0.0);
    if (NdotL <= 0.0) {
        return vec3(0.0);
    }
    vec3 H = normalize(L + V);
    vec3 F0 = mix(vec3(0.04), albedo, uMetalness);
    vec3 diffuse = albedo * (1.0 - uMetalness) / PI;
    vec3 specular = F0 * specularLobe(N, H, uRoughness);
    specular += vec3(0.04 * uClearcoat) * specularLobe(N, H, uClearcoatRoughness);
    return (diffuse + specular) * NdotL;
}

void main() {
    if (uMask && !uBloom) {
        FragColor = vec4(0.0, 0.0, 0.0, 1.0);
        return;
    }

    vec4 base = vec4(uColor, uOpacity);
    if (uHasTexture) {
        base *= texture(uBaseColor, vUV);
    }

    vec3 V = normalize(uCameraPos - vWorldPos);
    vec3 N = vNormal;
    if (dot(N, N) < 1e-8) {
        N = V;
    }
    N = normalize(N);
    if (uDoubleSided && !gl_FrontFacing) {
        N = -N;
    }

    vec3 color = uAmbient * base.rgb * (1.0 - 0.5 * uMetalness);
    color += uAmbient * mix(vec3(0.04), base.rgb, uMetalness) * 0.5 * uEnvIntensity;

    float dirLit = 1.0;
    if (uDirShadow && uReceiveShadow) {
        dirLit = shadowPCF(uDirShadowMap, uDirMatrix, vWorldPos);
    }
    color += uDirColor * shade(N, V, normalize(uDirToLight), base.rgb) * dirLit;

    for (int i = 0; i < MAX_SPOTS; i++) {
        if (i >= uSpotCount) {
            break;
        }
        vec3 toLight = uSpotPos[i] - vWorldPos;
        float d = length(toLight);
        vec3 L = toLight / max(d, 1e-4);

        float cone = smoothstep(uSpotCone[i].x, uSpotCone[i].y, dot(-L, uSpotDir[i]));
        if (cone <= 0.0) {
            continue;
        }
        float falloff = 1.0 / max(pow(d, uSpotCone[i].w), 0.01);
        if (uSpotCone[i].z > 0.0) {
            falloff *= pow(clamp(1.0 - pow(d / uSpotCone[i].z, 4.0), 0.0, 1.0), 2.0);
        }
        float lit = 1.0;
        if (uSpotShadow[i] != 0 && uReceiveShadow) {
            lit = shadowPCF(uSpotShadowMap[i], uSpotMatrix[i], vWorldPos);
        }
        color += uSpotColor[i] * shade(N, V, L, base.rgb) * cone * falloff * lit;
    }

    color += uEmissive;
    FragColor = vec4(color, base.a);
}
`

const depthVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uModel;
uniform mat4 uLightMatrix;

void main() {
    gl_Position = uLightMatrix * uModel * vec4(aPosition, 1.0);
}
`

const depthFragmentShader = `
#version 410 core

void main() {
}
`

// fullscreenVertexShader draws one oversized triangle from gl_VertexID.
const fullscreenVertexShader = `
#version 410 core

out vec2 vUV;

void main() {
    vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
    vUV = p;
    gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`

const blurFragmentShader = `
#version 410 core

in vec2 vUV;

uniform sampler2D uSource;
uniform vec2 uDirection;
uniform float uSpread;
uniform bool uExtract;
uniform float uThreshold;

out vec4 FragColor;

const float weights[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);

vec3 fetch(vec2 uv) {
    vec3 c = texture(uSource, uv).rgb;
    if (uExtract) {
        float luma = dot(c, vec3(0.2126, 0.7152, 0.0722));
        c *= step(uThreshold, luma);
    }
    return c;
}

void main() {
    vec2 texel = uSpread / vec2(textureSize(uSource, 0));
    vec3 sum = fetch(vUV) * weights[0];
    for (int i = 1; i < 5; i++) {
        vec2 offset = uDirection * texel * float(i);
        sum += fetch(vUV + offset) * weights[i];
        sum += fetch(vUV - offset) * weights[i];
    }
    FragColor = vec4(sum, 1.0);
}
`

const compositeFragmentShader = `
#version 410 core

in vec2 vUV;

uniform sampler2D uScene;
uniform sampler2D uBloomTex;
uniform float uStrength;
uniform float uExposure;

out vec4 FragColor;

// Narkowicz ACES approximation
vec3 aces(vec3 x) {
    return clamp((x * (2.51 * x + 0.03)) / (x * (2.43 * x + 0.59) + 0.14), 0.0, 1.0);
}

void main() {
    vec3 hdr = texture(uScene, vUV).rgb + texture(uBloomTex, vUV).rgb * uStrength;
    vec3 mapped = aces(hdr * uExposure);
    FragColor = vec4(pow(mapped, vec3(1.0 / 2.2)), 1.0);
}
`
